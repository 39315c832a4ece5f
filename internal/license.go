package internal

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"go4.org/legal"
)

const mitLicense = `Copyright (c) The mousemanip Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.`

func init() {
	legal.RegisterLicense(mitLicense)
}

// WriteLicenses prints every registered license to w.
func WriteLicenses(w io.Writer) {
	fmt.Fprintf(w, "Licenses for this program: %s\n", os.Args[0])

	for _, li := range legal.Licenses() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "---")
		fmt.Fprintln(w)
		fmt.Fprintln(w, li)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "---")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Be well, Creator.")
}

// Mount registers the debug endpoints on mux. status may be nil.
func Mount(mux *http.ServeMux, status StatusFunc) {
	mux.HandleFunc("/.mousemanip/buildinfo", buildInfoHandler(status))
	mux.HandleFunc("/.mousemanip/licenses", func(w http.ResponseWriter, r *http.Request) {
		WriteLicenses(w)
	})
}
