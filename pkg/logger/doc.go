// Package logger is a small factory around log/slog used across otpkit.
//
// It exists so every component logs the same way without repeating handler
// wiring: JSON at info level by default, or WithCLI for the terminal frontend
// where diagnostics go to stderr and stay out of the code output.
//
//	log := logger.New(logger.WithCLI(), logger.WithAttr(slog.String("app", "otpkit")))
//	logger.SetAsDefault(log)
package logger
