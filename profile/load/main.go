// Profiling:
// go build ./profile/load
// ./load
// go tool pprof -http=":8000" -nodefraction=0.001 ./load mem.pprof

package main

import (
	"fmt"
	"strings"

	"github.com/pkg/profile"

	"record-loader/record"
	"record-loader/source"
)

type monster struct {
	ID      int     `csv:"0"`
	Name    string  `csv:"1"`
	HP      int     `csv:"2,default=100"`
	Speed   float64 `csv:"3,default=1"`
	Enabled bool    `csv:"4,default=true"`
}

func main() {
	rounds := 50
	lines := 10000

	text := table(lines)
	l := record.NewLoader(source.Memory{"monsters": text})

	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	total := run(l, rounds)
	p.Stop()

	fmt.Println(total)
}

func run(l *record.Loader, rounds int) int {
	total := 0

	for range rounds {
		s, err := record.Open[monster](l, "monsters", true)
		if err != nil {
			panic(err)
		}

		for m := range s.All() {
			total += m.HP
		}

		_ = s.Close()
	}

	return total
}

func table(lines int) string {
	var sb strings.Builder

	sb.WriteString("ID,Name,HP,Speed,Enabled\n")

	for i := range lines {
		hp := "x"
		if i%3 != 0 {
			hp = fmt.Sprint(i)
		}

		fmt.Fprintf(&sb, "%d,monster%d,%s,%d.5,%t\n", i, i, hp, i%7, i%2 == 0)
	}

	return sb.String()
}
