// Package sound provides the built-in implementations of the "sound"
// extension point.
package sound

import (
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/Otacon/emesene/internal/extension"
)

// CategoryName is the extension point owned by this package.
const CategoryName = "sound"

// Player is the contract every sound extension must satisfy.
type Player interface {
	Play(name string) error
	Stop()
}

// NullPlayer discards every play request. It is the category's system
// default, so a broken profile can never leave the host without a player.
type NullPlayer struct{}

// Play implements Player.
func (p *NullPlayer) Play(name string) error { return nil }

// Stop implements Player.
func (p *NullPlayer) Stop() {}

// ConsolePlayer rings the terminal bell for every play request.
type ConsolePlayer struct {
	out io.Writer
}

// NewConsolePlayer creates a ConsolePlayer writing to out.
func NewConsolePlayer(out io.Writer) *ConsolePlayer {
	return &ConsolePlayer{out: out}
}

// Play implements Player.
func (p *ConsolePlayer) Play(name string) error {
	_, err := fmt.Fprint(p.out, "\a")
	return err
}

// Stop implements Player.
func (p *ConsolePlayer) Stop() {}

// Module implements the extension.Module interface for this package.
type Module struct{}

// Register creates the sound category and registers the built-in players.
func (m *Module) Register(r *extension.Registry) error {
	null := &extension.Extension{
		Type: reflect.TypeOf(&NullPlayer{}),
		New:  func(args ...any) (any, error) { return &NullPlayer{}, nil },
	}
	console := &extension.Extension{
		Type: reflect.TypeOf(&ConsolePlayer{}),
		New: func(args ...any) (any, error) {
			out := io.Writer(os.Stdout)
			if len(args) > 0 {
				w, ok := args[0].(io.Writer)
				if !ok {
					return nil, fmt.Errorf("sound: ConsolePlayer wants an io.Writer, got %T", args[0])
				}
				out = w
			}
			return NewConsolePlayer(out), nil
		},
	}

	ifaces := []*extension.Interface{extension.InterfaceOf[Player]("sound.Player")}
	cat := r.RegisterCategory(CategoryName, null, ifaces, true)
	if err := cat.Register(console); err != nil {
		return err
	}
	return cat.SetDefault(null)
}
