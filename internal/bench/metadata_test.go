package bench

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeArch(t *testing.T) {
	assert.Equal(t, "x86_64", NormalizeArch("amd64"))
	assert.Equal(t, "x86", NormalizeArch("386"))
	assert.Equal(t, "arm64", NormalizeArch("arm64"))
	assert.Equal(t, "riscv64", NormalizeArch("riscv64"))
}

func TestDefaultMetadata(t *testing.T) {
	t.Setenv("OMP_NUM_THREADS", "4")

	meta := DefaultMetadata()

	assert.Equal(t, NormalizeArch(runtime.GOARCH), meta[MachineKey])
	assert.Equal(t, runtime.GOOS, meta["os"])
	assert.Equal(t, runtime.Version(), meta["go_version"])
	assert.NotEmpty(t, meta["num_cpu"])
	assert.NotEmpty(t, meta["runner_path"])
	assert.Equal(t, "4", meta["OMP_NUM_THREADS"])
}

func TestHostMachineMatchesRuntime(t *testing.T) {
	assert.Equal(t, NormalizeArch(runtime.GOARCH), HostMachine())
}
