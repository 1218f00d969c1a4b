package command

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"runtime/metrics"
	"time"

	"sharpbot/internal/core/domain"
	"sharpbot/internal/core/port"
	"sharpbot/internal/core/service"

	"github.com/rs/zerolog/log"
)

// Debug reports runtime memory figures and the sharpen node in use.
type Debug struct {
	textSender port.TextSender
	node       service.Descriptor
	command    string
}

func NewDebug(sender port.TextSender, node service.Descriptor, command string) *Debug {
	return &Debug{textSender: sender, node: node, command: command}
}

func (d *Debug) GetCommand() string {
	return d.command
}

const kb = 1024
const debugTemplate = `node: %s %s
allocated mem: %d KB
goroutines: %d
heap: %d KB
stack: %d KB
compiled with %s for %s-%s
`

var debugSamples = []string{
	"/memory/classes/heap/objects:bytes",
	"/memory/classes/heap/stacks:bytes",
	"/memory/classes/total:bytes",
}

func (d *Debug) Respond(ctx context.Context, _ time.Duration, message *domain.Message) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", d.GetCommand()).
		Logger()

	l.Info().Msg("handling request")

	data := make([]metrics.Sample, len(debugSamples))
	for i, name := range debugSamples {
		data[i].Name = name
	}

	metrics.Read(data)

	values := make([]uint64, len(data))
	for i, sample := range data {
		if sample.Value.Kind() == metrics.KindUint64 {
			values[i] = sample.Value.Uint64()
		}
		l.Debug().Str("name", sample.Name).Uint64("value", values[i]).Msg("runtime metric")
	}

	goos, goarch := runtime.GOOS, runtime.GOARCH
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			switch setting.Key {
			case "GOOS":
				goos = setting.Value
			case "GOARCH":
				goarch = setting.Value
			}
		}
	}

	_, err := d.textSender.SendMessageReply(ctx, message,
		fmt.Sprintf(
			debugTemplate,
			d.node.ID, d.node.Version,
			values[2]/kb,
			runtime.NumGoroutine(),
			values[0]/kb,
			values[1]/kb,
			runtime.Version(), goos, goarch,
		))
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}
