package bench

import (
	"os"
	"runtime"
	"strconv"
)

// threadEnvKeys are the environment variables that control library
// parallelism. They are recorded in result metadata so a comparison can be
// traced back to its thread configuration.
var threadEnvKeys = []string{
	"GOMAXPROCS",
	"OMP_NUM_THREADS",
	"OPENBLAS_NUM_THREADS",
	"MKL_NUM_THREADS",
	"VECLIB_MAXIMUM_THREADS",
}

// NormalizeArch maps a Go GOARCH value onto the conventional ISA name used
// in result metadata, so files produced by differently-built runners compare
// equal. Unknown values pass through unchanged.
func NormalizeArch(arch string) string {
	switch arch {
	case "amd64":
		return "x86_64"
	case "386":
		return "x86"
	default:
		return arch
	}
}

// HostMachine returns the normalized architecture of the running binary.
// Under Rosetta 2 an x86_64 build reports x86_64 even on Apple Silicon,
// which is exactly what the matrix driver wants to verify.
func HostMachine() string {
	return NormalizeArch(runtime.GOARCH)
}

// DefaultMetadata collects the run metadata recorded in every result file.
func DefaultMetadata() map[string]string {
	meta := map[string]string{
		MachineKey:   HostMachine(),
		"os":         runtime.GOOS,
		"go_version": runtime.Version(),
		"num_cpu":    strconv.Itoa(runtime.NumCPU()),
		"gomaxprocs": strconv.Itoa(runtime.GOMAXPROCS(0)),
	}
	if exe, err := os.Executable(); err == nil {
		meta["runner_path"] = exe
	}
	for _, key := range threadEnvKeys {
		if v, ok := os.LookupEnv(key); ok {
			meta[key] = v
		}
	}
	return meta
}
