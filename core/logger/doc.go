// Package logger builds slog loggers and provides attribute helpers shared by
// the rest of the module.
//
// Loggers are created with New and a set of options:
//
//	log := logger.New(logger.WithDevelopment("webapp"))        // text, debug
//	log := logger.New(logger.WithProduction("webapp"))         // JSON, info
//	log := logger.New(
//		logger.WithLevel(logger.ParseLevel(os.Getenv("LOG_LEVEL"))),
//		logger.WithJSONFormatter(),
//		logger.WithOutput(os.Stderr),
//	)
//
// Context values can be copied into every record:
//
//	log := logger.New(
//		logger.WithProduction("webapp"),
//		logger.WithContextValue("request_id", requestIDKey{}),
//	)
//
// Attribute helpers return an empty slog.Attr for zero inputs, so
//
//	log.Error("session teardown failed", logger.Error(err), logger.UserID(id))
//
// needs no nil checks. Secrets go through Token, which keeps only a short
// prefix of the value.
package logger
