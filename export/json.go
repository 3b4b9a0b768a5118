package export

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/pretty"

	"github.com/lollipopkit/distil/binchunk"
)

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary
)

// JSON encodes the main function's tree, the document the Moonshine
// distillery produces.
func JSON(res *binchunk.Result, indent bool) ([]byte, error) {
	data, err := json.Marshal(res.Tree())
	if err != nil {
		return nil, err
	}
	if indent {
		data = pretty.Pretty(data)
	}
	return data, nil
}
