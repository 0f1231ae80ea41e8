/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package common

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PrintNotifier writes action outcomes as single lines, like a toast.
type PrintNotifier struct {
	W io.Writer
}

func (n PrintNotifier) Success(message string) {
	fmt.Fprintf(n.W, "✓ %s\n", message)
}

func (n PrintNotifier) Failure(message string) {
	fmt.Fprintf(n.W, "✗ %s\n", message)
}

// AskConfirmation prints prompt and reads a yes/no answer. Anything other
// than y or yes is a no.
func AskConfirmation(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
