// Package todo owns the task list: it creates, updates, filters, and
// persists tasks to a single JSON file.
//
// The task file (tasks.json) is a JSON array of task objects:
//
//	[
//	  {
//	    "id": "6f1c2a0e-5d4b-4c57-9a34-0b7f0f0b8d11",
//	    "text": "Buy milk",
//	    "completed": false,
//	    "date": "2025-05-05T14:23:11.123456",
//	    "due_date": "2025-05-10T00:00:00"
//	  }
//	]
//
// Array order is the display order. New tasks are appended.
//
// # Timestamps
//
// "date" is the creation time and "due_date" is an optional due date (or
// null). Both are ISO-8601 strings. Values without an offset are read as
// local time. On write, creation times are naive local timestamps with
// microseconds and due dates are local midnight, so files stay readable by
// older tools that produced this format.
//
// # Errors
//
// Store operations return typed errors that match one of the sentinels
// with errors.Is:
//
//   - ErrValidationFailed: task text is empty after trimming
//   - ErrNotFound: no task has the given id
//   - ErrReadFailed: the task file is missing or malformed (the store is
//     reset to an empty list)
//   - ErrWriteFailed: the task file could not be written (memory still
//     holds the change)
//
// # File Format
//
// When writing task files, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - Write to a temporary file and rename, so a failed write never leaves
//     a truncated file behind
package todo
