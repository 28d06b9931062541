package exceltable

import (
	"errors"

	"github.com/xuri/excelize/v2"
)

// ErrEmptySheet is returned for sheets without
// any non empty cell.
var ErrEmptySheet = errors.New("empty sheet")

// ErrSheetNotExist is returned when a sheet name
// does not exist in the file.
type ErrSheetNotExist = excelize.ErrSheetNotExist
