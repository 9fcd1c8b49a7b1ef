package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/fzft/go-primitives/hashset"
	"github.com/fzft/go-primitives/log"
)

var (
	HisFileEnv     = "HASHSETCLI_HISTFILE"
	HisFileDefault = ".hashsetcli_history"
)

var commands = []string{
	"add", "remove", "contains", "size", "clear", "compact",
	"dump", "stats", "identity", "help", "quit", "exit",
}

const helpText = `commands:
  add <v>...       insert values
  remove <v>...    delete values
  contains <v>...  test membership
  size             element count
  clear            remove everything
  compact          shrink the table to fit
  dump             print the set
  stats            capacity, size and fill ratio
  identity         start over with an identity-hashed set
  quit             exit`

type cli struct {
	set *hashset.Set[int64]
}

func (c *cli) exec(line string) bool {
	argv := strings.Fields(line)
	if len(argv) == 0 {
		return true
	}

	switch strings.ToLower(argv[0]) {
	case "quit", "exit":
		return false
	case "help":
		fmt.Println(helpText)
	case "add":
		c.mutate(argv[1:], c.set.Add)
	case "remove":
		c.mutate(argv[1:], c.set.Remove)
	case "contains":
		c.mutate(argv[1:], c.set.Contains)
	case "size":
		fmt.Println(c.set.Size())
	case "clear":
		c.set.Clear()
		fmt.Println("OK")
	case "compact":
		c.set.Compact()
		fmt.Printf("OK capacity=%d\n", c.set.Capacity())
	case "dump":
		fmt.Println(c.set.String())
	case "stats":
		capacity := c.set.Capacity()
		size := c.set.Size()
		fmt.Printf("capacity=%d size=%d load_factor=%.2f fill=%.2f\n",
			capacity, size, c.set.LoadFactor(), float64(size)/float64(capacity))
	case "identity":
		s := hashset.New[int64]()
		if err := s.SetHasher(hashset.IdentityHasher[int64]); err != nil {
			fmt.Printf("(error) %v\n", err)
			return true
		}
		c.set = s
		fmt.Println("OK")
	default:
		fmt.Printf("(error) unknown command '%s', try help\n", argv[0])
	}
	return true
}

// mutate applies op to each parsed value and prints one result per value.
func (c *cli) mutate(args []string, op func(int64) bool) {
	if len(args) == 0 {
		fmt.Println("(error) at least one value required")
		return
	}
	for _, arg := range args {
		v, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			fmt.Printf("(error) '%s' is not an integer\n", arg)
			continue
		}
		fmt.Println(op(v))
	}
}

func (c *cli) repl() {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(l string) []string {
		var out []string
		for _, cmd := range commands {
			if strings.HasPrefix(cmd, strings.ToLower(l)) {
				out = append(out, cmd)
			}
		}
		return out
	})

	historyFile := getDotfilePath(HisFileEnv, HisFileDefault)
	if historyFile != "" {
		if content, err := os.ReadFile(historyFile); err == nil {
			line.ReadHistory(bytes.NewReader(content))
		}
	}

	for {
		input, err := line.Prompt("hashset> ")
		if err != nil {
			break
		}
		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
		if !c.exec(input) {
			break
		}
	}

	if historyFile != "" {
		var buf bytes.Buffer
		if _, err := line.WriteHistory(&buf); err == nil {
			os.WriteFile(historyFile, buf.Bytes(), 0644)
		}
	}
}

// pipe runs commands from stdin without prompt or history.
func (c *cli) pipe() {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if !c.exec(scanner.Text()) {
			return
		}
	}
}

func getDotfilePath(envOverride, dotFilename string) string {
	var dotPath string

	path := os.Getenv(envOverride)
	if path != "" {
		if path == "/dev/null" {
			return ""
		}
		dotPath = path
	} else {
		home := os.Getenv("HOME")
		if home != "" {
			dotPath = fmt.Sprintf("%s/%s", home, dotFilename)
		}
	}
	return dotPath
}

func main() {
	if err := log.InitLogger(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Logger.Sync()

	c := &cli{set: hashset.New[int64]()}
	if isatty.IsTerminal(os.Stdin.Fd()) {
		log.Logger.Info("starting interactive session",
			zap.Int("capacity", c.set.Capacity()),
			zap.Float64("load_factor", c.set.LoadFactor()))
		c.repl()
	} else {
		c.pipe()
	}
}
