// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package okio

// noCopy is a sentinel used to make go vet flag accidental copies of types
// that embed it (cursors and pool stripes, which must not be copied once in
// use).
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
