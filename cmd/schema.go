package cmd

import (
	"encoding/json"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/eggdl-cli/eggdl/inline"
	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(schemaCmd)
}

// schemaCmd prints the JSON schema of the --json output.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema of the --json output",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(outputSchema()))
	},
}

func outputSchema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		name := t.Name()
		switch strings.ToLower(name) {
		case "video", "lesson", "failure", "output":
			return filepath.Base(t.PkgPath()) + "." + name
		}

		return name
	}

	return reflector.Reflect(&inline.Output{})
}
