package inline

import (
	"encoding/json"

	"github.com/eggdl-cli/eggdl/source"
	"github.com/samber/lo"
)

// Output is the document printed in JSON mode.
type Output struct {
	// Entry is the lesson or collection URL that was resolved.
	Entry string `json:"entry"`
	// Videos are the resolved videos in discovery order.
	Videos []*source.Video `json:"videos"`
	// Failures are the lessons that could not be resolved.
	Failures []source.Failure `json:"failures"`
}

func asJson(videos []*source.Video, failures []source.Failure, entry string) ([]byte, error) {
	return json.Marshal(&Output{
		Entry:    entry,
		Videos:   lo.Ternary(videos == nil, []*source.Video{}, videos),
		Failures: lo.Ternary(failures == nil, []source.Failure{}, failures),
	})
}
