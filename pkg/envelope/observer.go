package envelope

import (
	"log/slog"
)

// Observer is notified of every validation failure before the reader
// returns it. Observers must not retain or modify err.
type Observer func(flavor string, err *Error)

// LogObserver returns an observer logging each failure at warn level
func LogObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return func(flavor string, err *Error) {
		attrs := []any{
			slog.String("flavor", flavor),
			slog.String("code", string(err.Code)),
		}
		if err.Field != "" {
			attrs = append(attrs, slog.String("field", err.Field))
		}
		logger.Warn(err.Message, attrs...)
	}
}

// Observers combines several observers into one, skipping nil entries
func Observers(observers ...Observer) Observer {
	return func(flavor string, err *Error) {
		for _, o := range observers {
			if o != nil {
				o(flavor, err)
			}
		}
	}
}
