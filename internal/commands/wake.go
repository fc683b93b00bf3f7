package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/vitaminmoo/penta-wake/internal/config"
	"github.com/vitaminmoo/penta-wake/internal/wake"
)

// Wake sends the wake signal to t and reports success on w.
func Wake(ctx context.Context, sender *wake.Sender, t config.Target, w io.Writer) error {
	if err := sender.Send(ctx, t); err != nil {
		return err
	}
	fmt.Fprintln(w, successStyle.Render(fmt.Sprintf("Wake signal sent to %s (%s).", t.Name, t.Address)))
	return nil
}
