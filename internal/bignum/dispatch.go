package bignum

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"

	apperrors "github.com/agbru/collatz/internal/errors"
)

// Kernel names accepted by SelectKernel.
const (
	KernelAuto   = "auto"
	KernelScalar = "scalar"
	KernelLanes  = "lanes"
)

// Features describes the CPU capabilities relevant to kernel selection.
type Features struct {
	Arch  string
	AVX2  bool
	BMI2  bool
	ASIMD bool
}

// String returns a compact, human-readable list of the detected features.
func (f Features) String() string {
	var parts []string
	if f.AVX2 {
		parts = append(parts, "AVX2")
	}
	if f.BMI2 {
		parts = append(parts, "BMI2")
	}
	if f.ASIMD {
		parts = append(parts, "ASIMD")
	}
	if len(parts) == 0 {
		return f.Arch + " (none)"
	}
	return f.Arch + " (" + strings.Join(parts, ", ") + ")"
}

// Wide reports whether the CPU is a wide out-of-order core that can keep
// several independent multiplies in flight. LanesKernel is plain Go with no
// vector instructions; it gains from instruction-level parallelism only.
// The feature bits serve as a marker for such cores: AVX2 together with BMI2
// (MULX) on amd64, ASIMD on arm64.
func (f Features) Wide() bool {
	return (f.AVX2 && f.BMI2) || f.ASIMD
}

// DetectFeatures reports the features of the running CPU.
func DetectFeatures() Features {
	return Features{
		Arch:  runtime.GOARCH,
		AVX2:  cpu.X86.HasAVX2,
		BMI2:  cpu.X86.HasBMI2,
		ASIMD: cpu.ARM64.HasASIMD,
	}
}

// KernelNames lists the accepted kernel names.
func KernelNames() []string {
	return []string{KernelAuto, KernelScalar, KernelLanes}
}

// SelectKernel returns the kernel registered under name. "auto" resolves to
// LanesKernel on CPUs where Wide holds and to ScalarKernel otherwise.
func SelectKernel(name string) (Kernel, error) {
	switch strings.ToLower(name) {
	case "", KernelAuto:
		return selectFor(DetectFeatures()), nil
	case KernelScalar:
		return ScalarKernel{}, nil
	case KernelLanes:
		return LanesKernel{}, nil
	}
	return nil, apperrors.NewConfigError("unknown kernel %q (valid: %s)", name, strings.Join(KernelNames(), ", "))
}

func selectFor(f Features) Kernel {
	if f.Wide() {
		return LanesKernel{}
	}
	return ScalarKernel{}
}

// MustSelectKernel is like SelectKernel but panics on an unknown name.
func MustSelectKernel(name string) Kernel {
	k, err := SelectKernel(name)
	if err != nil {
		panic(fmt.Sprintf("bignum: %v", err))
	}
	return k
}
