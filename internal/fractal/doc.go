// Package fractal synthesizes Julia-set images.
//
// A render is two deterministic, single-threaded passes over a Canvas: a
// gradient pass that fills the red and blue channels from the pixel
// position, then an escape-time pass that overwrites the green channel with
// the number of iterations of z ← z² + C before |z| exceeds 2.
package fractal
