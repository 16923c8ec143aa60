package gbvfs

import "github.com/sirupsen/logrus"

// log is the package-wide logger, the logrus standard logger. Every
// caller-visible failure is still reported through a returned error. The
// handful of ERROR-level diagnostics (chunk format/version mismatches,
// missing resource decoders, and native-protocol OS failures) are logged
// by the chunk, resource and nativeproto packages through their own
// package variables, which are the same standard logger; no code in this
// package logs through log.
var log = logrus.StandardLogger()
