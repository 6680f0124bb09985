package kiroku

import "fmt"

// renderScript assembles the two-stage build script from the extracted
// compile and link commands. The link step is gated on the compile exit
// status: linking a package that failed to compile would act on stale or
// absent artifacts, so the script fails fast with exit 1 instead.
func renderScript(compileCommand, linkCommand string) []byte {
	const template = `#!/bin/bash
echo "Compiling"
%s
swiftStatus=$?
echo swiftc status is $swiftStatus
if [[ "$swiftStatus" -eq "0" ]]; then
echo "Linking"
%s
else
echo "Action did not compile" >&2
exit 1
fi
`
	return []byte(fmt.Sprintf(template, compileCommand, linkCommand))
}
