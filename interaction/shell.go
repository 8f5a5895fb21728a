// Package interaction holds the two front ends over the room list:
// a line-oriented menu and the HTTP form page. Both drive the same
// RoomService and ReportService.
package interaction

import "context"

// Shell runs one interactive session until the user quits or ctx ends.
type Shell interface {
	Run(ctx context.Context) error
}
