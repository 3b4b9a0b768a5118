package export

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/lollipopkit/distil/binchunk"
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("export: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// CBOR encodes the same tree as JSON. Numbers keep their exact value,
// infinities included.
func CBOR(res *binchunk.Result) ([]byte, error) {
	return cborEncMode.Marshal(res.Tree())
}
