package compile

import (
	"reflect"

	"github.com/louisabraham/QuantumKatas/qsim"
)

// Symbols exports the qsim package to interpreted submissions, in the
// layout yaegi expects (import path + "/" + package name).
var Symbols = map[string]map[string]reflect.Value{
	QsimImportPath + "/qsim": {
		// types
		"Qubit":     reflect.ValueOf((*qsim.Qubit)(nil)),
		"Simulator": reflect.ValueOf((*qsim.Simulator)(nil)),
		"Operation": reflect.ValueOf((*qsim.Operation)(nil)),
		"Signature": reflect.ValueOf((*qsim.Signature)(nil)),

		// gates and measurement
		"X":    reflect.ValueOf(qsim.X),
		"Y":    reflect.ValueOf(qsim.Y),
		"Z":    reflect.ValueOf(qsim.Z),
		"H":    reflect.ValueOf(qsim.H),
		"S":    reflect.ValueOf(qsim.S),
		"T":    reflect.ValueOf(qsim.T),
		"Rx":   reflect.ValueOf(qsim.Rx),
		"Ry":   reflect.ValueOf(qsim.Ry),
		"Rz":   reflect.ValueOf(qsim.Rz),
		"CNOT": reflect.ValueOf(qsim.CNOT),
		"CZ":   reflect.ValueOf(qsim.CZ),
		"SWAP": reflect.ValueOf(qsim.SWAP),
		"M":    reflect.ValueOf(qsim.M),
	},
}
