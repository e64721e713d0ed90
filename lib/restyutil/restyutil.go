// Package restyutil captures raw HTTP traffic of a resty client for
// offline inspection. Scraping sites that render inconsistently is
// much easier to debug from the exact bytes that came back than from
// logs alone.
package restyutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

type CaptureOutput interface {
	Write(id string, contents string)
}

type FilesystemOutput struct {
	directory string
}

// NewFilesystemOutput wipes dir and recreates it, one file per
// exchange.
func NewFilesystemOutput(dir string) FilesystemOutput {
	os.RemoveAll(dir)
	err := os.MkdirAll(dir, 0777)
	if err != nil {
		panic(err)
	}
	return FilesystemOutput{directory: dir}
}

func (o FilesystemOutput) Write(id string, contents string) {
	err := os.WriteFile(filepath.Join(o.directory, id), []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write http capture file", "id", id, "err", err)
	}
}

type captureCtx struct {
	output    CaptureOutput
	idcounter *uint64
}

// CaptureTraffic dumps every exchange on client to output. Tracing is
// left to telemetry.InstrumentResty, this hook only records bodies.
// A nil output makes the function a no-op.
func CaptureTraffic(client *resty.Client, output CaptureOutput) {
	if output == nil {
		return
	}

	var idcounter uint64
	c := captureCtx{output: output, idcounter: &idcounter}
	client.OnAfterResponse(c.onAfterResponse)
	client.OnError(c.onError)
}

func (c captureCtx) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	messageId := strconv.FormatUint(atomic.AddUint64(c.idcounter, 1), 10)
	c.output.Write(messageId, formatHttpMessage(res))
	slog.DebugContext(
		res.Request.Context(), "captured exchange",
		"method", res.Request.Method,
		"url", res.Request.URL,
		"message_id", messageId,
	)
	return nil
}

func (c captureCtx) onError(req *resty.Request, err error) {
	slog.ErrorContext(
		req.Context(), "request failed",
		"method", req.Method,
		"url", req.URL,
		"err", err,
	)
}
