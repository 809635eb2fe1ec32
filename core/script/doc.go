// Package script decodes mission script text into a generic nested table.
//
// Mission files are Lua chunks assigning plain tables to globals (mission,
// warehouses, options...). Decode runs such a chunk in a sandboxed
// interpreter with no standard library opened and exposes the resulting
// globals through a small tagged-union value model:
//
//   - String, Integer, Number, Bool and Nil for scalars
//   - Table for nested tables, with keyed (Get) and iterated (Pairs) access
//
// Consumers only see the Value and Table interfaces, never interpreter types,
// and must not retain tables after the Tree is closed.
//
// # Usage
//
//	tree, err := script.Decode(ctx, r, "mission")
//	if err != nil {
//	    return err
//	}
//	defer tree.Close()
//	root, err := tree.Global("mission")
package script
