package kiroku

import (
	"os"
	"runtime"

	"github.com/gookit/color"
)

// Global variables, assigned from config in initConfig.
var (
	packageDir    string
	scriptPath    string
	cacheDir      string
	tracesDir     string
	buildCommand  []string
	compilePrefix string
	linkPrefix    string
	suppressFlag  string
	addSuppress   bool
	scriptMode    os.FileMode
	Debug         bool
	ConfigFile    = "/etc/kiroku.conf"
	version       = "dev"     // overridden at build time
	arch          = runtime.GOARCH
	buildDate     = "unknown" // overridden at build time
	// Global executor (assigned in Main)
	UserExec *Executor
)

// Fixed defaults, taken from the OpenWhisk Swift action layout this tool
// was built to serve. All of them can be overridden in kiroku.conf.
const (
	defaultPackageDir    = "/swift3Action/spm-build"
	defaultScriptName    = "swiftbuildandlink.sh"
	defaultBuildCommand  = "swift build -v -c release"
	defaultCompilePrefix = "/usr/bin/swiftc -module-name Action "
	defaultLinkPrefix    = "/usr/bin/swiftc -Xlinker '-rpath=$ORIGIN' '-L/swift3Action/spm-build/.build/release' -o '/swift3Action/spm-build/.build/release/Action'"
	defaultSuppressFlag  = "-suppress-warnings"
	defaultCacheDir      = "/var/cache/kiroku"
)

// color helpers
var (
	colInfo    = color.Info // style provided by gookit/color
	colWarn    = color.Warn
	colError   = color.Error
	colSuccess = color.HEX("#1976D2")
	colArrow   = color.HEX("#FFEB3B")
)
