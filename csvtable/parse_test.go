package csvtable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		csv      string
		wantSep  string
		wantNL   string
		wantRows [][]string
		wantErr  bool
	}{
		{
			name:     "semicolon CRLF",
			csv:      "a;b\r\n1;2\r\n",
			wantSep:  ";",
			wantNL:   "\r\n",
			wantRows: [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:     "comma LF without trailing newline",
			csv:      "a,b\n1,2",
			wantSep:  ",",
			wantNL:   "\n",
			wantRows: [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:     "tab",
			csv:      "a\tb\tc\n1\t2\t3\n",
			wantSep:  "\t",
			wantNL:   "\n",
			wantRows: [][]string{{"a", "b", "c"}, {"1", "2", "3"}},
		},
		{
			name:     "sep header line",
			csv:      "sep=,\na;b,c\n",
			wantSep:  ",",
			wantNL:   "\n",
			wantRows: [][]string{{"a;b", "c"}},
		},
		{
			name:     "quoted fields",
			csv:      "a,b\n\"x,y\",\"say \"\"hi\"\"\"\n\"multi\nline\",2\n",
			wantSep:  ",",
			wantNL:   "\n",
			wantRows: [][]string{{"a", "b"}, {"x,y", `say "hi"`}, {"multi\nline", "2"}},
		},
		{
			name:     "empty line",
			csv:      "a,b\n\n1,2\n",
			wantSep:  ",",
			wantNL:   "\n",
			wantRows: [][]string{{"a", "b"}, nil, {"1", "2"}},
		},
		{
			name:     "empty fields",
			csv:      "a,,c\n,,\n",
			wantSep:  ",",
			wantNL:   "\n",
			wantRows: [][]string{{"a", "", "c"}, {"", "", ""}},
		},
		{
			name:    "unterminated quote",
			csv:     "a,\"b\n",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, format, err := ParseDetectFormat([]byte(tt.csv), nil)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "UTF-8", format.Encoding)
			require.Equal(t, tt.wantSep, format.Separator)
			require.Equal(t, tt.wantNL, format.Newline)
			require.Equal(t, tt.wantRows, rows)
		})
	}
}

func TestParseDetectFormat_Empty(t *testing.T) {
	rows, format, err := ParseDetectFormat(nil, nil)
	require.NoError(t, err)
	require.Empty(t, rows)
	require.NotNil(t, format)
}

func TestParseWithFormat(t *testing.T) {
	rows, err := ParseWithFormat([]byte("\xEF\xBB\xBFa;b\r\n1;2\r\n"), NewFormat(";"))
	require.NoError(t, err)
	require.Equal(t, [][]string{{"a", "b"}, {"1", "2"}}, rows)

	_, err = ParseWithFormat([]byte("sep=,\r\na,b\r\n"), NewFormat(";"))
	require.Error(t, err, "sep header differs from format")

	_, err = ParseWithFormat([]byte("a;b"), &Format{Encoding: "UTF-8", Separator: ";;", Newline: "\n"})
	require.Error(t, err, "invalid format")
}

func TestFormat_Validate(t *testing.T) {
	var nilFormat *Format
	require.Error(t, nilFormat.Validate())
	require.NoError(t, NewFormat(",").Validate())
	require.Error(t, (&Format{Encoding: "UTF-8", Separator: ",", Newline: "\r"}).Validate())
	require.Error(t, (&Format{Separator: ",", Newline: "\n"}).Validate())
}

func TestSanitizeUTF8(t *testing.T) {
	require.Equal(t, "a b c", string(sanitizeUTF8([]byte("a\u00a0b\uFFFDc"))))
}
