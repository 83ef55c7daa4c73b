package util

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/dpos-core/minercore/common"
)

// InitLogger configures the package-wide logrus formatter. Exposed as
// a function instead of an init() block so a host process can choose
// when (and whether) to apply it.
func InitLogger() {
	customFormatter := new(log.TextFormatter)
	customFormatter.TimestampFormat = "2006-01-02 15:04:05"
	customFormatter.FullTimestamp = true
	log.SetFormatter(customFormatter)

	switch viper.GetString(common.CfgLogLevels) {
	case "*:debug":
		log.SetLevel(log.DebugLevel)
	case "*:warn":
		log.SetLevel(log.WarnLevel)
	case "*:error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// WithPrefix returns a logger entry tagged with the given category,
// following the MINER / fuel / shuffle / DEBUG / INFO / ERROR category
// convention named in the core's observability contract.
func WithPrefix(prefix string) *log.Entry {
	return log.WithFields(log.Fields{"prefix": prefix})
}
