// This file is part of GopherSID.
//
// GopherSID is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherSID is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherSID.  If not, see <https://www.gnu.org/licenses/>.

// Package performance contains helper functions relating to performance.
//
// Check() plays a tune flat out for a fixed wall-clock duration and reports
// the frame rate achieved. The multiple over real time is the number that
// matters for batch conversion: it bounds how many tunes a validation pass
// can get through.
//
// RunProfiler() attaches the requested Go runtime profilers to a function.
// Check() uses it but it is also suitable for profiling a whole conversion
// from the command line.
package performance
