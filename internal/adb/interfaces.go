package adb

import (
	"context"

	"github.com/kobepower/CyberNinjaADB/internal/model"
)

// Bridge defines the interface for the device bridge service.
type Bridge interface {
	Connect(ctx context.Context, address string) Result
	TCPIPMode(ctx context.Context, serial string, port int) Result
	Devices(ctx context.Context) ([]model.SerialEntry, error)
	Reconnect(ctx context.Context, address string) Result
	RunCommand(ctx context.Context, serial, argsText string) (Result, error)
}
