// Package errors provides structured error handling for sheet-api.
//
// Errors carry a code, a message, and optional metadata, and can be
// wrapped while preserving the original code:
//
//	err := errors.NotFound("character not found").
//	    WithMeta("character_id", charID)
//
//	if err := repo.Get(ctx, id); err != nil {
//	    return errors.Wrap(err, "failed to get character")
//	}
//
// Layer guidelines:
//   - Repositories return NotFound/AlreadyExists/Internal with IDs in metadata.
//   - Orchestrators validate inputs (InvalidArgument via ValidationBuilder)
//     and wrap repository errors with business context.
//   - Handlers convert with ToGRPCError or Code.HTTPStatus and never inspect
//     error strings.
package errors
