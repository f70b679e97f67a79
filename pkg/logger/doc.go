// Package logger builds configured log/slog loggers for the application.
//
// The factory produces JSON loggers for production log aggregation or text
// loggers for local debugging, attaches static service attributes, and can
// inject request-scoped attributes (such as a request id) from the context of
// each log call through ContextExtractor functions.
//
// # Usage
//
//	log := logger.New(
//		logger.WithFormat(logger.FormatJSON),
//		logger.WithLevel(slog.LevelInfo),
//		logger.WithAttr(slog.String("service", "session-auth")),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//
// A Config struct with env tags is provided for twelve-factor setups; see
// NewFromConfig.
package logger
