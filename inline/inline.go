// Package inline implements the non-interactive output mode: resolved videos
// are printed instead of downloaded.
package inline

import (
	"fmt"
	"io"
	"os"

	"github.com/eggdl-cli/eggdl/resolve"
)

// Options tell Run where and how to print.
type Options struct {
	Out io.Writer
	// Entry is the URL the result was resolved from.
	Entry string
	// Json prints the whole result as a JSON document instead of one URL per line.
	Json bool
}

// Run prints result. Failures are only part of the JSON output.
func Run(result *resolve.Result, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	if result == nil {
		result = &resolve.Result{}
	}

	if options.Json {
		return writeJson(options.Out, result, options)
	}

	for _, video := range result.Videos {
		if _, err := fmt.Fprintln(options.Out, video.URL); err != nil {
			return err
		}
	}

	return nil
}

func writeJson(out io.Writer, result *resolve.Result, options *Options) error {
	data, err := asJson(result.Videos, result.Failures, options.Entry)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
