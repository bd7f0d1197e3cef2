package huffman

import (
	"github.com/op/go-logging"
)

// LogModule is the go-logging module name used by this package.
const LogModule = "huffman"

var log = logging.MustGetLogger(LogModule)
