package bench

import (
	"os"
	"runtime"
)

// Windows process creation falls over without most of this set, so the
// full list is forwarded there. Everywhere else children get a minimal,
// reproducible environment.
var windowsEnvVars = []string{
	"ALLUSERSPROFILE",
	"APPDATA",
	"COMPUTERNAME",
	"ComSpec",
	"CommonProgramFiles",
	"CommonProgramFiles(x86)",
	"CommonProgramW6432",
	"HOMEDRIVE",
	"HOMEPATH",
	"LOCALAPPDATA",
	"NUMBER_OF_PROCESSORS",
	"OS",
	"PATHEXT",
	"PROCESSOR_ARCHITECTURE",
	"PROCESSOR_IDENTIFIER",
	"PROCESSOR_LEVEL",
	"PROCESSOR_REVISION",
	"Path",
	"ProgramData",
	"ProgramFiles",
	"ProgramFiles(x86)",
	"ProgramW6432",
	"SystemDrive",
	"SystemRoot",
	"TEMP",
	"TMP",
	"USERDNSDOMAIN",
	"USERDOMAIN",
	"USERDOMAIN_ROAMINGPROFILE",
	"USERNAME",
	"USERPROFILE",
	"windir",
}

var defaultEnvVars = []string{
	"HOME",
	"PATH",
}

// ChildEnv returns the allow-listed environment forwarded to workload
// processes, in the KEY=value form os/exec expects.
func ChildEnv() []string {
	names := defaultEnvVars
	if runtime.GOOS == "windows" {
		names = windowsEnvVars
	}

	env := make([]string, 0, len(names))
	for _, name := range names {
		if value, ok := os.LookupEnv(name); ok {
			env = append(env, name+"="+value)
		}
	}
	return env
}
