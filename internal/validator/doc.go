// Package validator turns a loaded keymap into diagnostics.
//
// # Core Concepts
//
//   - [Severity]: Distinguishes between blocking errors and non-blocking warnings.
//   - [Issue]: A single problem, optionally tied to a source line.
//   - [Result]: Aggregates issues for one keymap file.
//   - [Reporter]: Writes a Result as colored text or JSON.
//
// # Basic Usage
//
//	list, report, err := keymap.LoadFile(path)
//	if err != nil {
//		return err
//	}
//	result := validator.CheckKeymap(path, list, report, validator.Options{Strict: true})
//	_ = validator.NewReporter(os.Stdout, validator.FormatText).Report(result)
//	if result.HasErrors() {
//		// exit non-zero
//	}
package validator
