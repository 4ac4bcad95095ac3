package stacktrace

import (
	"reflect"
	"testing"
)

func TestInternalPaths(t *testing.T) {
	t.Parallel()

	stack := []byte(`goroutine 7 [running]:
runtime/debug.Stack()
	/usr/local/go/src/runtime/debug/stack.go:26 +0x5e
github.com/shandysiswandi/gotask/internal/pkg/goroutine.(*Manager).recover(0xc000010000)
	/src/gotask/internal/pkg/goroutine/goroutine.go:104 +0x3c
panic({0x1234, 0x5678})
	/usr/local/go/src/runtime/panic.go:785 +0x132
github.com/shandysiswandi/gotask/internal/task/usecase.(*Usecase).Create(...)
	/src/gotask/internal/task/usecase/create.go:40
`)

	got := InternalPaths(stack)
	want := []string{
		"internal/pkg/goroutine/goroutine.go:104",
		"internal/task/usecase/create.go:40",
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("InternalPaths() = %v, want %v", got, want)
	}
}

func TestInternalPaths_NoInternalFrames(t *testing.T) {
	t.Parallel()

	if got := InternalPaths([]byte("main.main()\n\t/src/main.go:10 +0x1\n")); len(got) != 0 {
		t.Fatalf("expected no paths, got %v", got)
	}
}
