// Package bridge exposes the generate and export operations as named commands
// with string arguments and string results, the shape a host process invokes
// them in. Errors keep their type on the typed methods and are flattened to
// strings only by Invoke.
package bridge

import (
	"fmt"

	"github.com/jrh3k5/qrsvg/export"
	"github.com/jrh3k5/qrsvg/logging"
	"github.com/jrh3k5/qrsvg/scan"
)

const (
	CommandGenerate = "generate"
	CommandExport   = "export"
	CommandDecode   = "decode"

	ArgData = "data"
	ArgSVG  = "svg"
	ArgPath = "path"
)

// SVGGenerator produces SVG documents from payloads.
type SVGGenerator interface {
	EncodeToSVG(data string) (string, error)
}

// Request names a command and its arguments.
type Request struct {
	Command string            `json:"command"`
	Args    map[string]string `json:"args"`
}

// Response carries either a result or an error message.
type Response struct {
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

type Bridge struct {
	generator SVGGenerator
}

func New(generator SVGGenerator) *Bridge {
	return &Bridge{generator: generator}
}

// Generate encodes data into an SVG document.
func (b *Bridge) Generate(data string) (string, error) {
	return b.generator.EncodeToSVG(data)
}

// Export writes svgText to path.
func (b *Bridge) Export(svgText, path string) error {
	return export.SaveAsSVG(svgText, path)
}

// Decode reads the payload back out of a generated SVG document.
func (b *Bridge) Decode(svgText string) (string, error) {
	return scan.DecodeSVG(svgText)
}

// Invoke runs the named command. Every failure, including unknown commands
// and missing arguments, is reported as Response.Error.
func (b *Bridge) Invoke(req Request) Response {
	logging.Debug("Invoking command", "command", req.Command)

	result, err := b.dispatch(req)
	if err != nil {
		logging.Warn("Command failed", "command", req.Command, "error", err.Error())
		return Response{Error: err.Error()}
	}

	return Response{Result: result}
}

func (b *Bridge) dispatch(req Request) (string, error) {
	switch req.Command {
	case CommandGenerate:
		data, err := requireArg(req, ArgData)
		if err != nil {
			return "", err
		}
		return b.Generate(data)
	case CommandExport:
		svgText, err := requireArg(req, ArgSVG)
		if err != nil {
			return "", err
		}
		path, err := requireArg(req, ArgPath)
		if err != nil {
			return "", err
		}
		return "", b.Export(svgText, path)
	case CommandDecode:
		svgText, err := requireArg(req, ArgSVG)
		if err != nil {
			return "", err
		}
		return b.Decode(svgText)
	default:
		return "", fmt.Errorf("unknown command '%s'", req.Command)
	}
}

func requireArg(req Request, name string) (string, error) {
	value, ok := req.Args[name]
	if !ok {
		return "", fmt.Errorf("command '%s' requires argument '%s'", req.Command, name)
	}

	return value, nil
}
