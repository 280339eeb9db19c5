package connection

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// BindTx returns a session of db whose statements run on tx. The root db is
// left untouched. A nil tx returns db itself.
func BindTx(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db
	}
	s := db.Session(&gorm.Session{Context: context.Background()})
	s.Statement.ConnPool = tx
	return s
}
