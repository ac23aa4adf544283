// Package solver groups the solving engines that implement milp.Engine.
// Importing a sub-package registers its engine with milp.RegisterEngine.
package solver
