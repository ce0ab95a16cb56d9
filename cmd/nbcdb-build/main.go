// main.go -- build (or verify) an NBCDB constant database from
// whitespace-delimited or CSV text input.
//
// Modeled directly on the teacher's example/mphdb.go, driving this
// spec's Writer instead of go-bbhash's DBWriter.
//
// (c) 2024 the go-nbcdb authors
//
// License GPLv2

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	flag "github.com/opencoff/pflag"

	nbcdb "github.com/opencoff/go-nbcdb"
	"github.com/opencoff/go-nbcdb/internal/verify"
)

var (
	descr   string
	stable  bool
	verFile string
)

func main() {
	usage := fmt.Sprintf("%s [options] OUTPUT [INPUT ...]", os.Args[0])

	flag.StringVarP(&descr, "descr", "d", "nbcdb", "16-byte description embedded in the file header")
	flag.BoolVarP(&stable, "stable", "s", false, "Use the stable (reproducible) seeder instead of a random one")
	flag.StringVarP(&verFile, "verify", "V", "", "Verify an existing NBCDB file instead of building one")

	flag.Usage = func() {
		fmt.Printf("nbcdb-build - create a perfect-hash-indexed constant DB\nUsage: %s\n", usage)
		flag.PrintDefaults()
	}

	flag.Parse()
	args := flag.Args()

	if verFile != "" {
		doVerify(verFile)
		return
	}

	if len(args) < 1 {
		die("No output file name!\nUsage: %s\n", usage)
	}

	fn := args[0]
	args = args[1:]

	w := nbcdb.Open()

	var n uint64
	var err error
	if len(args) > 0 {
		for _, f := range args {
			switch {
			case strings.HasSuffix(f, ".txt"):
				n, err = addTextFile(w, f, " \t")
			case strings.HasSuffix(f, ".csv"):
				n, err = addCSVFile(w, f, ',')
			default:
				warn("Don't know how to add %s", f)
				continue
			}

			if err != nil {
				warn("can't add %s: %s", f, err)
				continue
			}
			fmt.Printf("+ %s: %d records\n", f, n)
		}
	} else {
		n, err = addTextStream(w, os.Stdin, " \t")
		if err != nil {
			die("can't add STDIN: %s", err)
		}
		fmt.Printf("+ <STDIN>: %d records\n", n)
	}

	fd, err := os.Create(fn)
	if err != nil {
		die("can't create %s: %s", fn, err)
	}
	defer fd.Close()

	var seeder nbcdb.Seeder
	if stable {
		seeder = nbcdb.NewStableSeeder()
	}

	if err := w.Output(fd, descr, seeder); err != nil {
		die("can't write db %s: %s", fn, err)
	}

	st, err := fd.Stat()
	if err == nil {
		fmt.Printf("%s: %d keys, %s\n", fn, w.TotalKeys(), nbcdb.Humansize(uint64(st.Size())))
	}
}

func doVerify(fn string) {
	rd, err := verify.Open(fn, 1000)
	if err != nil {
		die("can't read %s: %s", fn, err)
	}
	defer rd.Close()

	st, err := os.Stat(fn)
	var sz string
	if err == nil {
		sz = nbcdb.Humansize(uint64(st.Size()))
	}
	fmt.Printf("%s: %d g-table entries, %s\n", fn, rd.TotalKeys(), sz)
}

// addTextFile adds key/value pairs from a whitespace-delimited text file.
func addTextFile(w *nbcdb.Writer, fn, delim string) (uint64, error) {
	fd, err := os.Open(fn)
	if err != nil {
		return 0, err
	}
	defer fd.Close()
	return addTextStream(w, fd, delim)
}

func addTextStream(w *nbcdb.Writer, fd *os.File, delim string) (uint64, error) {
	var n uint64

	sc := bufio.NewScanner(bufio.NewReader(fd))
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if len(s) == 0 {
			continue
		}
		i := strings.IndexAny(s, delim)
		if i < 0 {
			continue
		}

		k := s[:i]
		v := strings.TrimSpace(s[i:])
		if len(k) == 0 {
			continue
		}

		if err := w.Put([]byte(k), []byte(v)); err != nil {
			continue
		}
		n++
	}
	return n, sc.Err()
}

// addCSVFile adds key/value pairs (fields 0 and 1) from a CSV file.
func addCSVFile(w *nbcdb.Writer, fn string, comma rune) (uint64, error) {
	fd, err := os.Open(fn)
	if err != nil {
		return 0, err
	}
	defer fd.Close()

	var n uint64
	sc := bufio.NewScanner(fd)
	for sc.Scan() {
		line := sc.Text()
		fields := strings.Split(line, string(comma))
		if len(fields) < 2 {
			continue
		}

		if err := w.Put([]byte(fields[0]), []byte(fields[1])); err != nil {
			continue
		}
		n++
	}
	return n, sc.Err()
}

func die(f string, v ...interface{}) {
	warn(f, v...)
	os.Exit(1)
}

func warn(f string, v ...interface{}) {
	s := fmt.Sprintf(f, v...)
	if n := len(s); n == 0 || s[n-1] != '\n' {
		s += "\n"
	}
	fmt.Fprintf(os.Stderr, "%s: %s", os.Args[0], s)
}
