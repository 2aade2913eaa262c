package property

import "testing"

var classifyTests = []struct {
	name        string
	spec        string
	want        Set
	wantErrFunc string
	wantErr     error
}{
	{
		name: "valid-free",
		spec: "CHECK( init(main()), LTL(G valid-free) )",
		want: Set(0).add(ValidFree),
	},
	{
		name: "multiple memory properties",
		spec: "valid-deref and valid-memtrack and valid-memcleanup",
		want: Set(0).add(ValidDeref).add(ValidMemtrack).add(ValidMemcleanup),
	},
	{
		name: "no-overflow",
		spec: "CHECK( init(main()), LTL(G ! overflow) )",
		want: Set(0).add(NoOverflow),
	},
	{
		name:        "unreach-call",
		spec:        "CHECK( init(main()), LTL(G ! call(reach_error())) )",
		want:        Set(0).add(UnreachCall),
		wantErrFunc: "reach_error",
	},
	{
		name:        "unreach-call with spaces",
		spec:        "LTL(G ! call( __assert_fail () ))",
		want:        Set(0).add(UnreachCall),
		wantErrFunc: "__assert_fail",
	},
	{
		name:        "legacy reach_error fallback",
		spec:        "the property under test mentions reach_error somewhere",
		want:        Set(0).add(UnreachCall),
		wantErrFunc: "reach_error",
	},
	{
		name:    "empty error function is fatal",
		spec:    "LTL(G ! call())",
		wantErr: ErrEmptyErrorFunction,
	},
	{
		name:    "no known property",
		spec:    "this does not mention any known property",
		wantErr: ErrNoProperty,
	},
}

func TestClassify(t *testing.T) {
	for _, test := range classifyTests {
		got, errFunc, err := Classify(test.spec)
		if test.wantErr != nil {
			if err != test.wantErr {
				t.Errorf("%s: expected error %v, got %v", test.name, test.wantErr, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
			continue
		}
		if got != test.want {
			t.Errorf("%s: got property set %v, want %v", test.name, got, test.want)
		}
		if errFunc != test.wantErrFunc {
			t.Errorf("%s: got error function %q, want %q", test.name, errFunc, test.wantErrFunc)
		}
	}
}

func TestClassifyIdempotent(t *testing.T) {
	spec := "CHECK( init(main()), LTL(G ! call(reach_error())) )"
	set1, fn1, err1 := Classify(spec)
	set2, fn2, err2 := Classify(spec)
	if err1 != err2 || set1 != set2 || fn1 != fn2 {
		t.Errorf("classifying the same specification twice produced different results: (%v,%v,%v) vs (%v,%v,%v)", set1, fn1, err1, set2, fn2, err2)
	}
}
