// Command wstrepl is an interactive numbered-menu console over a single
// working-set tree, for manual exploration of cascade behavior. It
// reproduces the original implementation's command-line harness: type a
// number followed by a space-separated list of keys.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Tehiaohiao/wst/pkg/workingset"
)

const menu = "\nPlease enter number (1) insert\t (2) search\t (3) remove\t (4) print\t" +
	"(5) print list\t(6) quit\t\tfollowed by keys to insert/search/remove"

func main() {
	fmt.Println("Working Set Tree: holds string keys for testing via command line")

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("Please enter the minimum degree of the b tree")
	minDegree := readInt(reader, workingset.DefaultMinDegree)

	tree, err := workingset.New[string](minDegree, workingset.DefaultScaleFactor, workingset.BaseHeight, workingset.DefaultNumTrees)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	for {
		fmt.Println(menu)
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		option, err := strconv.Atoi(fields[0])
		if err != nil {
			fmt.Println("Please enter a valid option")
			continue
		}
		args := fields[1:]

		switch option {
		case 1: // insert elements
			for _, k := range args {
				tree.Insert(k)
			}
		case 2: // search for elements
			for _, k := range args {
				fmt.Printf("%s: ", k)
				if tree.Search(k) {
					fmt.Println("element is found")
				} else {
					fmt.Println("element is NOT found")
				}
			}
		case 3: // delete elements
			for _, k := range args {
				if tree.Remove(k) {
					fmt.Printf("%s: deleted successfully\n", k)
				} else {
					fmt.Printf("%s: not found. Not deleted\n", k)
				}
			}
		case 4: // print current cascade
			fmt.Println(tree.String())
		case 5: // print recency list
			fmt.Println(tree.PrintOrderedMRU())
		case 6: // quit
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Please enter a valid option")
		}
	}
}

func readInt(reader *bufio.Reader, fallback int) int {
	line, err := reader.ReadString('\n')
	if err != nil {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return fallback
	}
	return n
}
