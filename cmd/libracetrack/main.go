// libracetrack exposes the racing engine as a C shared library with the
// Game_* entry points used by the ctypes front-end, so it can load the
// library unchanged.
//
// Build with:
//
//	go build -buildmode=c-shared -o libracetrack.so ./cmd/libracetrack
//
// Game pointers are opaque handles, never Go memory. Calls with an unknown
// handle or car index are ignored, and Game_get_car_data returns the
// record {0, 0, 0, 0, -1, 0} for them.
//
// Game_add_car drops cars placed outside the grid. A dropped car takes no
// index, so the next accepted car gets the index it would have had.
// Callers that cannot guarantee on-grid starts should check
// Game_get_car_count after adding cars.
package main

/*
#include <stdint.h>

typedef struct {
	int x, y;
	int vx, vy;
	int state;
	int color;
} CarExportData;

static void* handle_to_ptr(uintptr_t h) { return (void*)h; }
static uintptr_t ptr_to_handle(void* p) { return (uintptr_t)p; }
*/
import "C"

import (
	"unsafe"

	"github.com/vovakirdan/racetrack/internal/engine"
)

func handleOf(p unsafe.Pointer) engine.Handle {
	return engine.Handle(C.ptr_to_handle(p))
}

//export Game_new
func Game_new(width, height C.int) unsafe.Pointer {
	h := newGame(int(width), int(height))
	return C.handle_to_ptr(C.uintptr_t(h))
}

//export Game_delete
func Game_delete(game unsafe.Pointer) {
	deleteGame(handleOf(game))
}

//export Game_add_wall
func Game_add_wall(game unsafe.Pointer, x1, y1, x2, y2 C.int) {
	addWall(handleOf(game), int(x1), int(y1), int(x2), int(y2))
}

//export Game_add_car
func Game_add_car(game unsafe.Pointer, x, y, color C.int) {
	addCar(handleOf(game), int(x), int(y), int(color))
}

//export Game_update_car
func Game_update_car(game unsafe.Pointer, index, ax, ay C.int) {
	updateCar(handleOf(game), int(index), int(ax), int(ay))
}

//export Game_reset_car
func Game_reset_car(game unsafe.Pointer, index, x, y C.int) {
	resetCar(handleOf(game), int(index), int(x), int(y))
}

//export Game_get_car_data
func Game_get_car_data(game unsafe.Pointer, index C.int) C.CarExportData {
	r := carData(handleOf(game), int(index))
	return C.CarExportData{
		x:     C.int(r.X),
		y:     C.int(r.Y),
		vx:    C.int(r.VX),
		vy:    C.int(r.VY),
		state: C.int(r.Status),
		color: C.int(r.Color),
	}
}

//export Game_get_car_count
func Game_get_car_count(game unsafe.Pointer) C.int {
	return C.int(carCount(handleOf(game)))
}

func main() {}
