package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/javajack/vicalc"
	"github.com/javajack/vicalc/axis"
	"github.com/javajack/vicalc/cellref"
)

// interpreter executes one editing command per line. The axis mode is
// session state here and is passed explicitly to every directional call.
type interpreter struct {
	s      *vicalc.Session
	mode   axis.Mode
	out    io.Writer
	logger *slog.Logger
}

func newInterpreter(s *vicalc.Session, out io.Writer, logger *slog.Logger) *interpreter {
	return &interpreter{s: s, mode: axis.Row, out: out, logger: logger}
}

func (in *interpreter) runScript(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := in.exec(line); err != nil {
			return fmt.Errorf("line %d: %s: %w", n, line, err)
		}
	}
	return sc.Err()
}

func (in *interpreter) exec(line string) error {
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)
	in.logger.Debug("command", slog.String("name", name), slog.String("args", rest))

	switch name {
	case "set":
		addr, raw, _ := strings.Cut(rest, " ")
		a, err := cellref.Parse(addr)
		if err != nil {
			return err
		}
		return in.s.SetCell(a, raw)
	case "clear":
		r, err := rangeArg(args, 0)
		if err != nil {
			return err
		}
		return in.s.ClearRange(r)
	case "axis":
		if len(args) == 0 || args[0] == "toggle" {
			in.mode = in.mode.Toggle()
		} else {
			m, err := axis.Parse(args[0])
			if err != nil {
				return err
			}
			in.mode = m
		}
		fmt.Fprintf(in.out, "-- %s --\n", in.mode)
		return nil
	case "dd":
		return in.withCursor(args, func(c cellref.Address) error { return in.s.DeleteLine(c, in.mode) })
	case "o", "O":
		return in.withCursor(args, func(c cellref.Address) error {
			_, err := in.s.InsertLine(c, in.mode, name == "o")
			return err
		})
	case "D":
		return in.withCursor(args, func(c cellref.Address) error { return in.s.ClearToEnd(c, in.mode) })
	case "d0":
		return in.withCursor(args, func(c cellref.Address) error { return in.s.ClearToStart(c, in.mode) })
	case "dl":
		return in.withCursor(args, func(c cellref.Address) error { return in.s.ClearLine(c, in.mode) })
	case "yank", "y":
		r, err := rangeArg(args, 0)
		if err != nil {
			return err
		}
		in.s.Copy(r)
		return nil
	case "yy":
		return in.withCursor(args, func(c cellref.Address) error {
			in.s.CopyLine(c, in.mode)
			return nil
		})
	case "paste", "p":
		return in.withCursor(args, func(c cellref.Address) error {
			count := 1
			if len(args) > 1 {
				n, err := strconv.Atoi(args[1])
				if err != nil || n < 1 {
					return fmt.Errorf("invalid count %q", args[1])
				}
				count = n
			}
			return in.s.Paste(c, count, in.mode)
		})
	case "undo", "u":
		ok, err := in.s.Undo()
		if err == nil && !ok {
			fmt.Fprintln(in.out, "already at oldest change")
		}
		return err
	case "redo":
		ok, err := in.s.Redo()
		if err == nil && !ok {
			fmt.Fprintln(in.out, "already at newest change")
		}
		return err
	case "width":
		if len(args) != 2 {
			return fmt.Errorf("usage: width COLUMN N")
		}
		col, err := cellref.NameToCol(args[0])
		if err != nil {
			return err
		}
		w, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid width %q", args[1])
		}
		return in.s.SetColWidth(col, w)
	case "autowidth":
		var cols []int
		for _, a := range args {
			col, err := cellref.NameToCol(a)
			if err != nil {
				return err
			}
			cols = append(cols, col)
		}
		return in.s.AutoWidth(cols...)
	case "print":
		return in.print(args)
	case "eval":
		v, err := in.s.Sheet().Evaluate(rest)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.out, v)
		return nil
	case "find":
		return in.find(args)
	case "validate":
		for _, issue := range in.s.Validate() {
			fmt.Fprintln(in.out, issue)
		}
		return nil
	case "describe":
		_, err := io.WriteString(in.out, in.s.Describe())
		return err
	case "save":
		if len(args) == 0 {
			return fmt.Errorf("usage: save FILE")
		}
		return writeFile(in.s, args[0], "")
	}
	return fmt.Errorf("unknown command %q", name)
}

func (in *interpreter) withCursor(args []string, fn func(cellref.Address) error) error {
	if len(args) == 0 {
		return fmt.Errorf("missing cell address")
	}
	c, err := cellref.Parse(args[0])
	if err != nil {
		return err
	}
	return fn(c)
}

func rangeArg(args []string, i int) (cellref.Range, error) {
	if len(args) <= i {
		return cellref.Range{}, fmt.Errorf("missing range")
	}
	return cellref.ParseRange(args[i])
}

// print writes the display values of a range, or the used range, as TSV.
func (in *interpreter) print(args []string) error {
	var r cellref.Range
	if len(args) > 0 {
		var err error
		if r, err = cellref.ParseRange(args[0]); err != nil {
			return err
		}
	} else {
		var ok bool
		if r, ok = in.s.UsedRange(); !ok {
			return nil
		}
	}
	fmt.Fprintln(in.out, in.s.ExportTSV(r))
	return nil
}

func (in *interpreter) find(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: find TEXT [FROM]")
	}
	from := cellref.New(0, 0)
	backward := false
	if len(args) > 1 {
		var err error
		if from, err = cellref.Parse(args[1]); err != nil {
			return err
		}
	}
	query := args[0]
	if strings.HasPrefix(query, "?") {
		query, backward = query[1:], true
	}
	a, ok := in.s.FindNext(query, from, backward)
	if !ok {
		fmt.Fprintf(in.out, "pattern not found: %s\n", query)
		return nil
	}
	fmt.Fprintln(in.out, a.Name())
	return nil
}
