// Package diagnostic provides the structured report channel of a generation
// pass.
//
// Every rejected schema produces exactly one error diagnostic:
//   - unsupported-type: a property type has no parser mapping
//   - type-parameters: the target type declares type parameters
//   - name-conflict: two properties map to the same Go identifier
//   - emission: rendering or writing an artifact failed
package diagnostic
