// Copyright 2015 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// tfsutil drives a single in-memory TFS instance from the command
// line, for manual exercise of the library without writing Go code.
// It takes a script of operations, one per line, runs them against a
// fresh instance in order, and prints whatever each read or error
// produces.
//
// Supported operations:
//
//	cp HOST_PATH TFS_PATH   copy a host file in, truncating TFS_PATH
//	cat TFS_PATH            print TFS_PATH's full contents
//	ln TARGET LINK          hard link
//	ln -s TARGET LINK       symlink
//	rm TFS_PATH             unlink
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/arrzdev/tfs"
)

var fScript = flag.String("script", "", "Path to a script file. Defaults to stdin.")

func main() {
	flag.Parse()

	in := os.Stdin
	if *fScript != "" {
		f, err := os.Open(*fScript)
		if err != nil {
			log.Fatalf("opening script: %v", err)
		}
		defer f.Close()
		in = f
	}

	fs, err := tfs.Init()
	if err != nil {
		log.Fatalf("tfs.Init: %v", err)
	}
	defer fs.Destroy()

	scanner := bufio.NewScanner(in)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := runLine(fs, line); err != nil {
			fmt.Fprintf(os.Stderr, "line %d: %v\n", lineNum, err)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("reading script: %v", err)
	}
}

func runLine(fs *tfs.TFS, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "cp":
		if len(fields) != 3 {
			return fmt.Errorf("usage: cp HOST_PATH TFS_PATH")
		}
		return runCp(fs, fields[1], fields[2])

	case "cat":
		if len(fields) != 2 {
			return fmt.Errorf("usage: cat TFS_PATH")
		}
		return runCat(fs, fields[1])

	case "ln":
		switch len(fields) {
		case 3:
			return fs.Link(fields[1], fields[2])
		case 4:
			if fields[1] != "-s" {
				return fmt.Errorf("usage: ln [-s] TARGET LINK")
			}
			return fs.Symlink(fields[2], fields[3])
		default:
			return fmt.Errorf("usage: ln [-s] TARGET LINK")
		}

	case "rm":
		if len(fields) != 2 {
			return fmt.Errorf("usage: rm TFS_PATH")
		}
		return fs.Unlink(fields[1])

	default:
		return fmt.Errorf("unknown operation %q", fields[0])
	}
}

func runCp(fs *tfs.TFS, hostPath, tfsPath string) error {
	src, err := tfs.OpenHostFile(hostPath)
	if err != nil {
		return err
	}
	return fs.CopyFromHost(src, tfsPath)
}

func runCat(fs *tfs.TFS, tfsPath string) error {
	h, err := fs.Open(tfsPath, 0)
	if err != nil {
		return err
	}
	defer fs.Close(h)

	buf := make([]byte, 4096)
	for {
		n, err := fs.Read(h, buf)
		if n > 0 {
			os.Stdout.Write(buf[:n])
		}
		if err != nil {
			return err
		}
		if n == 0 {
			break
		}
	}

	io.WriteString(os.Stdout, "\n")
	return nil
}
