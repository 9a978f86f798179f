// Package folders creates, enumerates, and prunes category folders inside
// the directory being organized.
//
// Only folders that stacks itself could have produced are ever listed for
// unstacking: the fallback folder, the three media folders, and one folder
// per installed application. Other user folders are left alone.
package folders
