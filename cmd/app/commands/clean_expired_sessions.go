package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
)

// SessionCleaner removes sessions past their expiry.
type SessionCleaner interface {
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}

// RunCleanExpiredSessions deletes all sessions past their expiry and reports
// how many were removed. Supports both text and JSON output formats.
//
// Requirements: Database must be migrated and accessible.
func RunCleanExpiredSessions(
	ctx context.Context,
	cleaner SessionCleaner,
	logger *slog.Logger,
	w io.Writer,
	format string,
) error {
	logger.Info("cleaning expired sessions")

	count, err := cleaner.CleanupExpiredSessions(ctx)
	if err != nil {
		return fmt.Errorf("failed to cleanup expired sessions: %w", err)
	}

	if format == "json" {
		if err := outputCleanSessionsJSON(w, count); err != nil {
			return err
		}
	} else {
		outputCleanSessionsText(w, count)
	}

	logger.Info("cleanup completed", slog.Int64("count", count))
	return nil
}

// outputCleanSessionsText outputs the result in human-readable text format.
func outputCleanSessionsText(w io.Writer, count int64) {
	fmt.Fprintf(w, "Successfully deleted %d expired session(s)\n", count)
}

// outputCleanSessionsJSON outputs the result in JSON format for machine consumption.
func outputCleanSessionsJSON(w io.Writer, count int64) error {
	result := map[string]interface{}{
		"count": count,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	fmt.Fprintln(w, string(jsonBytes))
	return nil
}
