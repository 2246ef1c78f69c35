/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package thread

// LocalKey identifies one thread-local slot. The same key is used across
// every Thread; each Thread stores its own value for it independently.
type LocalKey struct {
	destroy func(any)
}

// LocalNew allocates a new thread-local key. destroy, if non-nil, is
// invoked on a thread's stored value for this key when that value is
// displaced by ReplaceLocal, and on every thread's remaining value for
// this key when that thread exits.
func LocalNew(destroy func(any)) *LocalKey {
	return &LocalKey{destroy: destroy}
}

// GetLocal returns the calling thread's value for key, or nil if unset.
// A nil thread or key is a no-op returning nil.
func (t *Thread) GetLocal(key *LocalKey) any {
	if t == nil || key == nil {
		return nil
	}
	v, _ := t.tls.Load(key)
	return v
}

// SetLocal stores val for key on t, without running key's destroy
// callback on whatever was previously stored.
func (t *Thread) SetLocal(key *LocalKey, val any) {
	if t == nil || key == nil {
		return
	}
	t.tls.Store(key, val)
}

// ReplaceLocal runs key's destroy callback (if any) on t's previous value
// for key, then stores val.
func (t *Thread) ReplaceLocal(key *LocalKey, val any) {
	if t == nil || key == nil {
		return
	}
	if old, ok := t.tls.Load(key); ok && key.destroy != nil {
		key.destroy(old)
	}
	t.tls.Store(key, val)
}

// LocalFree releases key itself; it does not run destroy on any thread's
// stored value. In this port that's a no-op beyond documentation: a
// *LocalKey carries no OS resource, and Go's garbage collector reclaims it
// once every Thread's storage and every caller have dropped their
// reference to it.
func LocalFree(key *LocalKey) {
	_ = key
}

// runTLSDestructors runs every key's destroy callback on t's remaining
// values. Called once, as t's ExitFunc returns.
func (t *Thread) runTLSDestructors() {
	t.tls.Range(func(k, v any) bool {
		key := k.(*LocalKey)
		if key.destroy != nil {
			key.destroy(v)
		}
		return true
	})
}
