// Package sema validates a parsed schema.
//
// Validate stops at the first violation and returns it as a *diag.Error
// (SEM3xxx) located at the offending definition or field:
//
//   - definition names are unique, not native and not reserved;
//   - every field type exists; discriminator appears only in unions;
//   - union alternatives are unique; alias targets exist;
//   - field names are unique within a definition, enum members and
//     ordinals are unique within an enum;
//   - ids are unique, positive (except the union discriminator) and never
//     larger than the field count;
//   - no struct contains itself through non-array fields.
package sema
