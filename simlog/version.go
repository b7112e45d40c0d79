package simlog

import (
	"go.uber.org/zap"

	"github.com/nqsim-project/nqsim/core"
)

// LogVersion emits the resolved runtime version at debug level, called
// once at process startup.
func LogVersion() {
	zap.L().Debug("nqsim version:" + core.Version)
}
