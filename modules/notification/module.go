// Package notification provides the built-in implementations of the
// "notification" extension point.
package notification

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"

	"github.com/Otacon/emesene/internal/extension"
)

// CategoryName is the extension point owned by this package.
const CategoryName = "notification"

// Notifier is the contract every notification extension must satisfy.
type Notifier interface {
	Notify(title, body string) error
}

// ConsoleNotifier prints notifications to a writer.
type ConsoleNotifier struct {
	out io.Writer
}

// NewConsoleNotifier creates a ConsoleNotifier writing to out.
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{out: out}
}

// Notify implements Notifier.
func (n *ConsoleNotifier) Notify(title, body string) error {
	_, err := fmt.Fprintf(n.out, "[%s] %s\n", title, body)
	return err
}

// LogNotifier routes notifications into the structured log instead of the
// user's terminal.
type LogNotifier struct{}

// Notify implements Notifier.
func (n *LogNotifier) Notify(title, body string) error {
	slog.Info("Notification.", "title", title, "body", body)
	return nil
}

// Module implements the extension.Module interface for this package.
type Module struct{}

// Register creates the notification category and registers the built-in
// notifiers.
func (m *Module) Register(r *extension.Registry) error {
	console := &extension.Extension{
		Type: reflect.TypeOf(&ConsoleNotifier{}),
		New: func(args ...any) (any, error) {
			out := io.Writer(os.Stdout)
			if len(args) > 0 {
				w, ok := args[0].(io.Writer)
				if !ok {
					return nil, fmt.Errorf("notification: ConsoleNotifier wants an io.Writer, got %T", args[0])
				}
				out = w
			}
			return NewConsoleNotifier(out), nil
		},
	}
	logNotifier := &extension.Extension{
		Type: reflect.TypeOf(&LogNotifier{}),
		New:  func(args ...any) (any, error) { return &LogNotifier{}, nil },
	}

	ifaces := []*extension.Interface{extension.InterfaceOf[Notifier]("notification.Notifier")}
	cat := r.RegisterCategory(CategoryName, console, ifaces, true)
	if err := cat.Register(logNotifier); err != nil {
		return err
	}
	return cat.SetDefault(console)
}
