package sqlite

import "strings"

// modernc.org/sqlite reports constraint failures as formatted message text
// rather than typed errors, so classification is by substring. Repositories
// use these to map onto repository.ErrForeignKeyViolation (bad client or
// project references) and repository.ErrDuplicate (user email collisions).

func isConstraintErr(err error, kind string) bool {
	return err != nil && strings.Contains(err.Error(), kind+" constraint failed")
}

func isForeignKeyViolation(err error) bool {
	return isConstraintErr(err, "FOREIGN KEY")
}

func isUniqueViolation(err error) bool {
	return isConstraintErr(err, "UNIQUE")
}
