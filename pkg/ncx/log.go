// Copyright 2016 NetconfCentral.
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

package ncx

import "github.com/golang/glog"

// A Logger is the sink for all output from the compiler core.  The
// four severities mirror the diagnostic model: Errorf and Warningf
// carry emitted diagnostics, Infof carries progress messages, Debugf
// carries tracing.
type Logger interface {
	Errorf(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// glogger is the default Logger, writing through glog.  Debug messages
// are emitted at verbosity 2.
type glogger struct{}

func (glogger) Errorf(format string, args ...interface{})   { glog.Errorf(format, args...) }
func (glogger) Warningf(format string, args ...interface{}) { glog.Warningf(format, args...) }
func (glogger) Infof(format string, args ...interface{})    { glog.Infof(format, args...) }
func (glogger) Debugf(format string, args ...interface{})   { glog.V(2).Infof(format, args...) }
