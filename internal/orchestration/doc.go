// Package orchestration runs one operation with several algorithm variants
// (or a reference backend) concurrently and compares the outcomes. It
// decouples the engine from presentation through the ProgressReporter and
// ResultPresenter interfaces.
package orchestration
