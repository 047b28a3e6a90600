package delay

import "testing"

func BenchmarkLineProcess(b *testing.B) {
	l, err := New(4801)
	if err != nil {
		b.Fatalf("New: %v", err)
	}

	b.ReportAllocs()
	x := 0.0
	for i := 0; i < b.N; i++ {
		x = l.Process(x*0.5 + 1e-3)
	}
	_ = x
}
