package csvio

import (
	"reflect"
	"testing"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want [][]string
	}{
		{
			name: "simple rows",
			in:   "a,b,c\nd,e,f\n",
			want: [][]string{{"a", "b", "c"}, {"d", "e", "f"}},
		},
		{
			name: "trailing row without newline",
			in:   "a,b\nc,d",
			want: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name: "crlf normalized",
			in:   "a,b\r\nc,d\r\n",
			want: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name: "quoted comma",
			in:   "\"a,b\",c\n",
			want: [][]string{{"a,b", "c"}},
		},
		{
			name: "quoted newline",
			in:   "\"line1\nline2\",x\n",
			want: [][]string{{"line1\nline2", "x"}},
		},
		{
			name: "doubled quote",
			in:   "\"say \"\"hi\"\"\",x\n",
			want: [][]string{{`say "hi"`, "x"}},
		},
		{
			name: "empty cells",
			in:   "a,,c\n",
			want: [][]string{{"a", "", "c"}},
		},
		{
			name: "trailing comma makes empty cell",
			in:   "a,\n",
			want: [][]string{{"a", ""}},
		},
		{
			name: "unterminated quote kept as literal",
			in:   "\"never closed,still here",
			want: [][]string{{"never closed,still here"}},
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
		{
			name: "lone newline yields one empty cell row",
			in:   "\n",
			want: [][]string{{""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scan(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Scan(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}
