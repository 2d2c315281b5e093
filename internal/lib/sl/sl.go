// Package sl — мелкие помощники для структурированного логирования
// через slog.
package sl

import "log/slog"

// Err оборачивает ошибку в slog.Attr с ключом "error", чтобы все записи
// об ошибках в логе имели одинаковое поле:
//
//	log.Error("failed to start trial", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
