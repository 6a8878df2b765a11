package sqlstore

import (
	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/uptrace/bun"
)

func resolveBunDB(candidate any) (*bun.DB, error) {
	switch typed := candidate.(type) {
	case nil:
		return nil, storeConfigError("sqlstore: persistence client is required")
	case *bun.DB:
		return typed, nil
	case *persistence.Client:
		if typed == nil {
			return nil, storeConfigError("sqlstore: persistence client is nil")
		}
		return typed.DB(), nil
	case interface{ DB() *bun.DB }:
		db := typed.DB()
		if db == nil {
			return nil, storeConfigError("sqlstore: persistence client returned a nil db")
		}
		return db, nil
	default:
		return nil, storeConfigError("sqlstore: unsupported persistence client type")
	}
}
