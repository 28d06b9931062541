package sqltable

import (
	"context"
	"database/sql"
	"database/sql/driver"

	"github.com/domonda/go-rowview"
)

// NewMessagesDB returns a read-only database that serves
// the rows of every message window as table with the map key as name.
// Queries read the shared batch of a message at execution time,
// so they see writes made through overlapping messages.
func NewMessagesDB(messages map[string]*rowview.Message) *sql.DB {
	return sql.OpenDB(database{messages: messages})
}

// NewMessageDB returns a read-only database with msg as table tableName.
func NewMessageDB(tableName string, msg *rowview.Message) *sql.DB {
	return NewMessagesDB(map[string]*rowview.Message{
		tableName: msg,
	})
}

type database struct {
	messages map[string]*rowview.Message
}

func (c database) Connect(context.Context) (driver.Conn, error) {
	return c, nil
}

func (c database) Driver() driver.Driver {
	return c
}

func (c database) Open(string) (driver.Conn, error) {
	return c, nil
}

func (c database) Prepare(query string) (driver.Stmt, error) {
	return newStmt(c.messages, query)
}

func (database) Close() error {
	return nil
}

func (c database) Begin() (driver.Tx, error) {
	return c, nil
}

func (database) Commit() error {
	return nil
}

func (database) Rollback() error {
	return nil
}
